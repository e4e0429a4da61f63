package cmdshared

import (
	"errors"
	"fmt"
	"os"

	"github.com/horizr/horizr/core"
	"github.com/sahilm/fuzzy"
)

// LoadPackOrExit loads the pack containing the working directory
func LoadPackOrExit() *core.Pack {
	pack, err := core.LoadPack(".")
	if err != nil {
		if errors.Is(err, core.ErrPackNotFound) {
			fmt.Println("No horizr pack found in the working directory or any parent directory. Run 'horizr init' to create one.")
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
	return pack
}

// FindEntryOrExit resolves code to a mod entry of pack, suggesting similar ids when nothing matches
func FindEntryOrExit(pack *core.Pack, code string) *core.MetaFile {
	mf := pack.FindByCode(code)
	if mf != nil {
		return mf
	}

	fmt.Printf("No mod found for %s\n", code)
	if suggestions := Suggest(code, pack.IDs(), 3); len(suggestions) > 0 {
		fmt.Println("Did you mean:")
		for _, s := range suggestions {
			fmt.Println("  " + s)
		}
	}
	os.Exit(1)
	return nil
}

// Suggest returns up to limit options that fuzzily match input, best match first
func Suggest(input string, options []string, limit int) []string {
	matches := fuzzy.Find(input, options)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = options[m.Index]
	}
	return out
}
