package utils

import (
	"fmt"
	"math"
	"runtime"
)

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

func IsNanPanic(A any) {
	if IsNan(A) {
		panic("NAN found")
	}
}

func IsNan(A any) bool {
	switch v := A.(type) {
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	case []float64:
		for _, f := range v {
			if math.IsNaN(f) {
				return true
			}
		}
	case Vector:
		return IsNan(v.DataP)
	case Matrix:
		return IsNan(v.DataP)
	}
	return false
}

func IsInf(A any) bool {
	switch v := A.(type) {
	case float64:
		return math.IsInf(v, 0)
	case float32:
		return math.IsInf(float64(v), 0)
	case []float64:
		for _, f := range v {
			if math.IsInf(f, 0) {
				return true
			}
		}
	case Vector:
		return IsInf(v.DataP)
	case Matrix:
		return IsInf(v.DataP)
	}
	return false
}

// IsFinite reports whether A carries neither NaN nor Inf values.
func IsFinite(A any) bool {
	return !IsNan(A) && !IsInf(A)
}
