// Command hushwire exposes the hushwire boundary operations on the command
// line: key generation, secret agreement, and message sealing.
package main

func main() {
	Execute()
}
