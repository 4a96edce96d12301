// Package utils contains utility functions for the attestd gateway.
package utils

import (
	"fmt"
)

// DisplayLogo prints the Attest ASCII logo with version information
func DisplayLogo(version string) {
	fmt.Println()
	fmt.Println(` ░░░░░░░░░░░░░░░░░░░░░░░░░
 ░█▀█░▀█▀░▀█▀░█▀▀░█▀▀░▀█▀░
 ░█▀█░░█░░░█░░█▀▀░▀▀█░░█░░
 ░▀░▀░░▀░░░▀░░▀▀▀░▀▀▀░░▀░░
 ░░░░░░░░░░░░░░░░░░░░░░░░░`)
	fmt.Printf("\n Attest v%s - Document Acknowledgement Gateway\n", version)
	fmt.Println(" Batches, recipients and notifications for policy sign-off")
	fmt.Println()
}
