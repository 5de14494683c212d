package main

import (
	"github.com/daily-spark/quote-store/cmd"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logrus.Fatalf("error executing command: %v", err)
	}
}
