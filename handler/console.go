package handler

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"inventory-billing/service"
)

// MaxLineBytes bounds one input line. A longer line stops the console.
const MaxLineBytes = 1 << 20

// Console is the line-oriented operator terminal.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 4096), MaxLineBytes)
	return &Console{in: sc, out: out}
}

// Printf writes to the operator terminal.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Prompt prints label and reads one line as typed. ok is false once input is
// exhausted or unreadable; Err tells the two apart.
func (c *Console) Prompt(label string) (line string, ok bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

// Err is the read error that stopped input, or nil at a clean end of input.
func (c *Console) Err() error {
	return c.in.Err()
}

// ConfirmShortfall asks whether to buy everything that is left. Only "y" or
// "Y" is affirmative; there is no default and no timeout.
func (c *Console) ConfirmShortfall(ctx context.Context, s service.Shortfall) bool {
	c.Println()
	c.Println("Sorry, we don't have enough quantity in our Inventory")
	c.Printf("We only have %d quantity\n", s.Available)
	c.Println("Would you like to purchase it?")
	answer, ok := c.Prompt("Press Y/y to purchase: ")
	return ok && strings.EqualFold(strings.TrimSpace(answer), "y")
}
