package main

import "github.com/oshokin/vibration-alarm/cmd/vibration-monitor/cmd"

func main() {
	cmd.Execute()
}
