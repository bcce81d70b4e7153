package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/browser"
)

func openBrowser(url string) {
	if err := browser.OpenURL(url); err != nil {
		fmt.Fprintf(os.Stderr, "could not open browser: %v\n", err)
	}
}
