package main

import "github.com/soliscottude/ec2-self-healing-demo/cmd/alarmctl/cmd"

func main() {
	cmd.Execute()
}
