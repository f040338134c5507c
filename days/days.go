//go:build advent

package days

import "github.com/chriserin/advent"

//advent:test 1
func dec01() {
	simple := [2]string{"24000", "45000"}
	full := [2]string{"69289", "205615"}
	//advent:magic
	advent.Magic(simple, full)
}
