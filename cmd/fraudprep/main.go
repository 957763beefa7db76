package main

import "github.com/dbsmedya/fraudprep/cmd/fraudprep/cmd"

func main() {
	cmd.Execute()
}
