// Command deskprofile saves and restores named desktop profiles: monitor
// layout plus audio routing. "deskprofile serve" runs the HTTP API used by
// the desktop shell; the other subcommands work directly on the data dir.
package main

func main() {
	Execute()
}
