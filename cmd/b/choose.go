package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/matsen/bookmarker/internal/display"
	"github.com/matsen/bookmarker/internal/prompt"
	"github.com/spf13/cobra"
)

// runChoose shows the most used bookmarks on stderr, asks for a key and
// behaves like quick for it. Only the chosen path goes to stdout.
func runChoose(cmd *cobra.Command, args []string) error {
	sess := sessionFrom(cmd)
	st := mustOpenStore(sess)

	n := topCount(sess, 0)
	top := st.Top(n)
	if len(top) == 0 {
		outputEmptyStore()
		return nil
	}

	display.TopList(os.Stderr, top, n)

	key, err := prompt.Choose(os.Stdin, os.Stderr, top, prompt.DefaultPrompt)
	if errors.Is(err, prompt.ErrAborted) {
		exitWithError(ExitError, "Aborted.")
	}
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	b := mustTouch(st, key)
	fmt.Println(b.Path)
	return nil
}

// outputEmptyStore reports that there is nothing to list or choose from.
// This is not an error.
func outputEmptyStore() {
	fmt.Println(emptyStoreMessage)
}
