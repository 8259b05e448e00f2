// Package testing provides fixture helpers shared by the package tests.
package testing

import "math/rand"

const charSet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandString generates a random string of the given length from lower- and
// uppercase alphabet
func RandString(length int) string {
	out := make([]byte, length)
	for i := range out {
		out[i] = charSet[rand.Intn(len(charSet))]
	}
	return string(out)
}
