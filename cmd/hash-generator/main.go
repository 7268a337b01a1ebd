// Command hash-generator prints bcrypt hashes for seeding user accounts.
// There is no registration endpoint, so users are created directly in the
// database:
//
//	hash-generator -user alice s3cret | psql "$DATABASE_URL"
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	user := flag.String("user", "", "emit an INSERT statement for this username instead of the bare hash")
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, flag.Args(), *user, *cost); err != nil {
		fmt.Fprintln(os.Stderr, "hash-generator:", err)
		os.Exit(1)
	}
}

// run hashes each password in args, or each line of in when args is empty.
func run(in io.Reader, out io.Writer, args []string, user string, cost int) error {
	passwords := args
	if len(passwords) == 0 {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			if line := strings.TrimRight(sc.Text(), "\r"); line != "" {
				passwords = append(passwords, line)
			}
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("failed to read passwords: %w", err)
		}
	}
	if len(passwords) == 0 {
		return fmt.Errorf("no passwords given")
	}
	if user != "" && len(passwords) != 1 {
		return fmt.Errorf("-user takes exactly one password, got %d", len(passwords))
	}

	for _, password := range passwords {
		hash, err := auth.HashPassword(password, cost)
		if err != nil {
			return err
		}
		if user != "" {
			fmt.Fprintf(out, "INSERT INTO users (username, password_hash) VALUES ('%s', '%s');\n",
				strings.ReplaceAll(user, "'", "''"), hash)
			continue
		}
		fmt.Fprintln(out, hash)
	}
	return nil
}
