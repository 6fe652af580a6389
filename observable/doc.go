// Package observable provides a thread-safe value holder that pushes every
// new value to its subscribers on the executor each subscriber chose.
//
// A subscriber first receives the value current at subscription time and
// then every later value in the order Next was called. Deliveries to one
// subscriber never overlap, whichever executor it uses.
//
//	state := observable.New(false)
//	id := state.Subscribe(observable.Main(), func(loading bool) {
//		fmt.Println("loading:", loading)
//	})
//	defer state.Unsubscribe(id)
//	state.Next(true)
package observable
