// Package ordernum generates human-readable order and receipt numbers.
//
// Numbers are a second-resolution timestamp plus a short random suffix.
// There is no collision retry: two creations in the same second can in
// principle draw the same suffix. The insert then fails on the primary
// key, which the repository surfaces as a duplicate error.
package ordernum

import (
	"fmt"
	"math/rand"
	"time"
)

const timeLayout = "20060102150405"

const upperAlnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Order returns a number like ORD-20250131154210-0482.
func Order() string {
	return fmt.Sprintf("ORD-%s-%04d", time.Now().Format(timeLayout), rand.Intn(10000))
}

// Receipt returns a number like RCP-20250131154210-7QK2.
func Receipt() string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = upperAlnum[rand.Intn(len(upperAlnum))]
	}
	return fmt.Sprintf("RCP-%s-%s", time.Now().Format(timeLayout), suffix)
}
