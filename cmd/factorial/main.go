// Command factorial computes 10! on a cooperative executor and on a worker
// goroutine, and reports the result and elapsed time of each.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
