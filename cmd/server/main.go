// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
