/*package logging controls how chatty the library is. Numerical code like
this is miserable to debug with a debugger, so the expensive routines
(info-cache construction, the flux-radius solves, photon shooting) trace
what they are doing when Mode is set to Debug.*/
package logging

import (
	"fmt"
	"runtime"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

// This is handled this way so that a config object doesn't need to be
// threaded through literally every function in the project.
var (
	Mode Flag = Nil
)

// MemString returns a string containing various statistics on the current
// memory usage of the process. Mostly useful when shooting very large
// photon arrays.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}
