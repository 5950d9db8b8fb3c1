// Command hash-generator prints the bcrypt hash to use as
// KANBAN_AUTH_PASSWORD_HASH. The password is read from the first argument,
// or from the first line of standard input when no argument is given.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/aesirglt/AdaTech/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	hash, err := generate(flag.Args(), os.Stdin, *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

// generate hashes the password taken from args or, failing that, from in.
func generate(args []string, in io.Reader, cost int) (string, error) {
	password, err := readPassword(args, in)
	if err != nil {
		return "", err
	}
	return auth.HashPassword(password, cost)
}

func readPassword(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		if args[0] == "" {
			return "", errors.New("password cannot be empty")
		}
		return args[0], nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return password, nil
}
