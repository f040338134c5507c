// Package advent holds the marker call recognised by adventgen.
//
// A solution is declared in a file built only with the advent tag:
//
//	//advent:test 1
//	func dec01() {
//		simple := [2]string{"24000", "45000"}
//		full := [2]string{"69289", "205615"}
//		//advent:magic
//		advent.Magic(simple, full)
//	}
//
// adventgen reads the expected answers for both parts of the simple and full
// inputs and writes dec01_advent_test.go, which runs day01.Run against
// inputs/01.simple.txt and inputs/01.full.txt.
package advent

// Magic does nothing at run time. It exists so annotated definitions
// type-check; adventgen reads its arguments from the source.
func Magic(simple, full [2]string) {}
