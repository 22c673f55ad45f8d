/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/sparkify/etl/cmd"

func main() {
	cmd.Execute()
}
