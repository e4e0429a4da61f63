package cmdshared

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// PromptYesNo asks a yes/no question on stdin. An empty answer selects def.
// In non-interactive mode the question is answered with yes.
func PromptYesNo(prompt string, def bool) bool {
	if def {
		fmt.Print(prompt + " [Y/n]: ")
	} else {
		fmt.Print(prompt + " [y/N]: ")
	}
	if viper.GetBool("non-interactive") {
		fmt.Println("Y (non-interactive mode)")
		return true
	}
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		fmt.Printf("Failed to prompt user: %v\n", err)
		os.Exit(1)
	}
	return parseAnswer(answer, def)
}

func parseAnswer(answer string, def bool) bool {
	ansNormal := strings.ToLower(strings.TrimSpace(answer))
	if len(ansNormal) == 0 {
		return def
	}
	return ansNormal[0] == 'y'
}
