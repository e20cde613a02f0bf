package breaker_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quantrail/breaker"
)

// ExampleNew demonstrates creating a circuit breaker with default settings.
func ExampleNew() {
	circuit := breaker.New("my-service")

	err := circuit.Do(context.Background(), func(ctx context.Context) error {
		return nil
	})

	fmt.Println("Error:", err)
	fmt.Println("State:", circuit.State())

	// Output:
	// Error: <nil>
	// State: closed
}

// ExampleNew_withOptions demonstrates creating a circuit breaker with custom settings.
func ExampleNew_withOptions() {
	circuit := breaker.New("payment-service",
		breaker.WithFailureThreshold(3),
		breaker.WithSuccessThreshold(2),
		breaker.WithRecoveryTimeout(30*time.Second),
	)

	fmt.Println("Name:", circuit.Name())
	fmt.Println("State:", circuit.State())

	// Output:
	// Name: payment-service
	// State: closed
}

// ExampleNew_withProfile demonstrates starting from a predefined profile.
func ExampleNew_withProfile() {
	circuit := breaker.New("orders-db",
		breaker.WithProfile(breaker.DatabaseProfile),
	)

	fmt.Println("Name:", circuit.Name())
	fmt.Println("State:", circuit.State())

	// Output:
	// Name: orders-db
	// State: closed
}

// ExampleCircuit_Do demonstrates basic circuit breaker usage.
func ExampleCircuit_Do() {
	circuit := breaker.New("api",
		breaker.WithFailureThreshold(2),
	)

	attempts := 0
	for i := 0; i < 5; i++ {
		err := circuit.Do(context.Background(), func(ctx context.Context) error {
			attempts++
			return errors.New("service unavailable")
		})
		if breaker.IsOpen(err) {
			fmt.Println("Circuit is open, skipping call")
		}
	}

	fmt.Println("Attempts:", attempts)
	fmt.Println("State:", circuit.State())

	// Output:
	// Circuit is open, skipping call
	// Circuit is open, skipping call
	// Circuit is open, skipping call
	// Attempts: 2
	// State: open
}

// ExampleRun demonstrates the generic helper for returning values.
func ExampleRun() {
	circuit := breaker.New("user-service")

	user, err := breaker.Run(context.Background(), circuit, func(ctx context.Context) (string, error) {
		return "john_doe", nil
	})

	fmt.Println("User:", user)
	fmt.Println("Error:", err)

	// Output:
	// User: john_doe
	// Error: <nil>
}

// ExampleCircuit_DoAsync demonstrates timeout-bounded protection.
func ExampleCircuit_DoAsync() {
	circuit := breaker.New("slow-api",
		breaker.WithCallTimeout(50*time.Millisecond),
	)

	err := circuit.DoAsync(context.Background(), func(ctx context.Context) error {
		select {
		case <-time.After(time.Minute):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	fmt.Println("Timed out:", breaker.IsTimeout(err))

	// Output:
	// Timed out: true
}

// ExampleIsOpen demonstrates checking if an error is due to an open circuit.
func ExampleIsOpen() {
	circuit := breaker.New("service",
		breaker.WithFailureThreshold(1),
	)

	_ = circuit.Do(context.Background(), func(ctx context.Context) error {
		return errors.New("fail")
	})

	err := circuit.Do(context.Background(), func(ctx context.Context) error {
		return nil
	})

	if breaker.IsOpen(err) {
		fmt.Println("Circuit is open, using fallback")
	}

	// Output:
	// Circuit is open, using fallback
}

// ExampleOpenError demonstrates inspecting the stats carried by a rejection.
func ExampleOpenError() {
	circuit := breaker.New("billing",
		breaker.WithFailureThreshold(2),
	)

	for i := 0; i < 2; i++ {
		_ = circuit.Do(context.Background(), func(ctx context.Context) error {
			return errors.New("fail")
		})
	}

	err := circuit.Do(context.Background(), func(ctx context.Context) error {
		return nil
	})

	var openErr *breaker.OpenError
	if errors.As(err, &openErr) {
		fmt.Println("Circuit:", openErr.Name)
		fmt.Println("Failures:", openErr.Stats.Failures)
	}

	// Output:
	// Circuit: billing
	// Failures: 2
}

// ExampleCircuit_Reset demonstrates manually resetting a circuit.
func ExampleCircuit_Reset() {
	circuit := breaker.New("service",
		breaker.WithFailureThreshold(1),
	)

	_ = circuit.Do(context.Background(), func(ctx context.Context) error {
		return errors.New("fail")
	})

	fmt.Println("Before reset:", circuit.State())

	circuit.Reset()

	fmt.Println("After reset:", circuit.State())

	// Output:
	// Before reset: open
	// After reset: closed
}

// ExampleIf demonstrates custom failure conditions.
func ExampleIf() {
	transient := errors.New("transient error")

	circuit := breaker.New("api",
		breaker.WithFailureThreshold(2),
		breaker.If(func(err error) bool {
			return errors.Is(err, transient)
		}),
	)

	_ = circuit.Do(context.Background(), func(ctx context.Context) error {
		return errors.New("permanent error")
	})
	_ = circuit.Do(context.Background(), func(ctx context.Context) error {
		return errors.New("permanent error")
	})

	fmt.Println("After permanent errors:", circuit.State())

	_ = circuit.Do(context.Background(), func(ctx context.Context) error {
		return transient
	})
	_ = circuit.Do(context.Background(), func(ctx context.Context) error {
		return transient
	})

	fmt.Println("After transient errors:", circuit.State())

	// Output:
	// After permanent errors: closed
	// After transient errors: open
}

// ExampleIgnore demonstrates excluding errors from failure accounting.
func ExampleIgnore() {
	conflict := errors.New("conflict")

	circuit := breaker.New("api",
		breaker.WithFailureThreshold(1),
		breaker.Ignore(func(err error) bool {
			return errors.Is(err, conflict)
		}),
	)

	_ = circuit.Do(context.Background(), func(ctx context.Context) error {
		return conflict
	})

	fmt.Println("State:", circuit.State())

	// Output:
	// State: closed
}

// ExampleCircuit_Protect demonstrates protecting an inline block.
func ExampleCircuit_Protect() {
	circuit := breaker.New("ledger")

	done, err := circuit.Protect(context.Background())
	if err != nil {
		fmt.Println("blocked:", err)
		return
	}

	// The block's work goes here; report its error to done.
	done(nil)

	fmt.Println("Requests:", circuit.Stats().TotalRequests)

	// Output:
	// Requests: 1
}

// ExampleRegistry demonstrates sharing circuits across call sites.
func ExampleRegistry() {
	reg := breaker.NewRegistry()

	a := reg.Get("billing-db", breaker.WithProfile(breaker.DatabaseProfile))
	b := reg.Get("billing-db") // same circuit, options ignored

	fmt.Println("Shared:", a == b)
	fmt.Println("Circuits:", len(reg.AllStats()))

	// Output:
	// Shared: true
	// Circuits: 1
}

// ExampleOnStateChange demonstrates the state change hook.
func ExampleOnStateChange() {
	circuit := breaker.New("service",
		breaker.WithFailureThreshold(1),
		breaker.OnStateChange(func(name string, from, to breaker.State) {
			fmt.Printf("Circuit %s: %s -> %s\n", name, from, to)
		}),
	)

	_ = circuit.Do(context.Background(), func(ctx context.Context) error {
		return errors.New("fail")
	})

	// Output:
	// Circuit service: closed -> open
}

// Example_fallback demonstrates graceful degradation when circuit is open.
func Example_fallback() {
	circuit := breaker.New("user-service",
		breaker.WithFailureThreshold(1),
	)

	getUser := func(ctx context.Context, _ int) (string, error) {
		user, err := breaker.Run(ctx, circuit, func(ctx context.Context) (string, error) {
			return "", errors.New("service unavailable")
		})
		if breaker.IsOpen(err) {
			return "guest", nil
		}
		if err != nil {
			return "", err
		}
		return user, nil
	}

	_, err1 := getUser(context.Background(), 1)
	user2, _ := getUser(context.Background(), 2)

	fmt.Println("User 1 error:", err1 != nil)
	fmt.Println("User 2:", user2)

	// Output:
	// User 1 error: true
	// User 2: guest
}

// ExampleState_String demonstrates state string representation.
func ExampleState_String() {
	fmt.Println(breaker.Closed.String())
	fmt.Println(breaker.Open.String())
	fmt.Println(breaker.HalfOpen.String())

	// Output:
	// closed
	// open
	// half-open
}
