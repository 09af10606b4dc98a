// Command example is a small runnable demonstration of the rx runtime: a
// mutable signal, a derived computed signal, an effect reacting to both,
// and a batch that coalesces two writes into one notification.
package main

import (
	"fmt"
	"time"

	"github.com/riftsig/rx"
)

func main() {
	count := rx.New(0, rx.Options[int]{Name: "count"})

	doubled := rx.NewComputed(func(ctx *rx.Context[int]) (int, error) {
		return count.Get() * 2, nil
	}, nil, rx.ComputedOptions[int]{Options: rx.Options[int]{Name: "doubled"}})

	dispose := rx.Effect(func() func() {
		fmt.Printf("count=%d doubled=%d\n", count.Get(), doubled.Get())
		return nil
	})
	defer dispose()

	rx.Batch(func() {
		_ = count.Set(1)
		_ = count.Set(2)
	})

	fetchTrigger := rx.New(0)
	remote := rx.NewAsyncComputed(func(ctx *rx.Context[string]) (string, error) {
		n := rx.Dep[int](ctx.Unwrap(), "trigger")
		select {
		case <-time.After(10 * time.Millisecond):
			return fmt.Sprintf("result-%d", n), nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}, map[string]rx.AnySignal{"trigger": fetchTrigger.AsAny()})

	task := rx.WithDefault(remote, "loading...")
	fmt.Println(task().Status, task().Value)

	time.Sleep(30 * time.Millisecond)
	fmt.Println(task().Status, task().Value)
}
