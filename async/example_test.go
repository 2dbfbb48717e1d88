package async_test

import (
	"fmt"

	"github.com/b97tsk/factorial/async"
)

// This example creates a coroutine that prints the value of a state whenever
// it changes, and ends after 3.
func Example() {
	var myExecutor async.Executor

	myExecutor.Autorun(myExecutor.Run)

	var myState async.State[int]

	myExecutor.Spawn(func(co *async.Coroutine) async.Result {
		co.Watch(&myState)

		v := myState.Get()
		fmt.Println(v)

		if v < 3 {
			return co.Yield()
		}

		return co.End()
	})

	for i := 1; i <= 5; i++ {
		myExecutor.Spawn(async.Do(func() { myState.Set(i) }))
	}

	fmt.Println(myState.Get()) // Prints 5.

	// Output:
	// 0
	// 1
	// 2
	// 3
	// 5
}

// This example demonstrates how a coroutine can transition from one task to
// another.
func Example_transition() {
	var myExecutor async.Executor

	myExecutor.Autorun(myExecutor.Run)

	var myState async.State[int]

	myExecutor.Spawn(func(co *async.Coroutine) async.Result {
		co.Watch(&myState)

		v := myState.Get()
		fmt.Println(v)

		if v < 2 {
			return co.Yield()
		}

		return co.Transition(func(co *async.Coroutine) async.Result {
			co.Watch(&myState)

			v := myState.Get()
			fmt.Println(v, "(transitioned)")

			if v < 4 {
				return co.Yield()
			}

			return co.End()
		})
	})

	for i := 1; i <= 5; i++ {
		myExecutor.Spawn(async.Do(func() { myState.Set(i) }))
	}

	// Output:
	// 0
	// 1
	// 2
	// 2 (transitioned)
	// 3 (transitioned)
	// 4 (transitioned)
}

// This example demonstrates how to await a state until a condition is met.
func ExampleState_Await() {
	var myExecutor async.Executor

	myExecutor.Autorun(myExecutor.Run)

	var myState async.State[int]

	myExecutor.Spawn(myState.Await(
		func(v int) bool { return v >= 3 },
	).Then(async.Do(func() {
		fmt.Println(myState.Get()) // Prints 3.
	})))

	for i := 1; i <= 5; i++ {
		myExecutor.Spawn(async.Do(func() { myState.Set(i) }))
	}

	fmt.Println(myState.Get()) // Prints 5.

	// Output:
	// 3
	// 5
}

// This example demonstrates how a coroutine awaits a value computed by
// a child coroutine.
func ExampleFuture() {
	var myExecutor async.Executor

	var sum async.Future[int]

	myExecutor.Spawn(func(co *async.Coroutine) async.Result {
		var a, b async.Future[int]

		co.Spawn(async.Do(func() { a.Resolve(15) }))
		co.Spawn(async.Do(func() { b.Resolve(27) }))

		fmt.Println("awaiting")

		return co.Await(&a, &b).Until(func() bool {
			return a.Ready() && b.Ready()
		}).Then(async.Do(func() {
			sum.Resolve(a.Get() + b.Get())
		}))
	})

	myExecutor.Run()

	fmt.Println("a + b =", sum.Get())

	// Output:
	// awaiting
	// a + b = 42
}

func ExampleComplete() {
	var myExecutor async.Executor

	v, err := async.Complete(&myExecutor, func(out *async.Future[string]) async.Task {
		return async.Do(func() { out.Resolve("hello") })
	})

	fmt.Println(v, err)

	// Output:
	// hello <nil>
}
