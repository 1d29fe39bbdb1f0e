package main

// main is the program entry point. It delegates to Execute, which sets up
// the Cobra command defined in root.go and runs the device query.
func main() {
	Execute()
}
