package menu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// prompter reads one answer per line. Every method returns io.EOF once the
// input is exhausted so the caller can unwind to the main loop.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

func (p *prompter) ask(label string) (string, error) {
	p.printf("%s ", label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// askDefault returns def when the answer is blank.
func (p *prompter) askDefault(label, def string) (string, error) {
	answer, err := p.ask(fmt.Sprintf("%s [%s]:", label, def))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (p *prompter) askRequired(label string) (string, error) {
	for {
		answer, err := p.ask(label)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		p.println("El valor no puede estar vacío.")
	}
}

// choose prints numbered options and returns the zero-based index chosen.
func (p *prompter) choose(title string, options []string) (int, error) {
	p.println()
	p.println(title)
	for i, opt := range options {
		p.printf("  %d) %s\n", i+1, opt)
	}
	for {
		answer, err := p.ask("Seleccione una opción:")
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		p.printf("Opción inválida. Introduzca un número entre 1 y %d.\n", len(options))
	}
}

func (p *prompter) confirm(label string) (bool, error) {
	for {
		answer, err := p.ask(label + " (s/n):")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "s", "si", "sí", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.println("Responda s o n.")
	}
}

// askPositiveInt keeps asking until the answer is an integer >= 1.
func (p *prompter) askPositiveInt(label string) (int, error) {
	for {
		answer, err := p.ask(label)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 {
			return n, nil
		}
		p.println("Por favor ingrese un número entero mayor que 0.")
	}
}

func (p *prompter) askNonNegativeFloat(label string, def *float64) (float64, error) {
	for {
		var answer string
		var err error
		if def != nil {
			answer, err = p.askDefault(label, strconv.FormatFloat(*def, 'f', -1, 64))
		} else {
			answer, err = p.ask(label)
		}
		if err != nil {
			return 0, err
		}
		f, convErr := strconv.ParseFloat(strings.ReplaceAll(answer, ",", "."), 64)
		if convErr == nil && f >= 0 {
			return f, nil
		}
		p.println("Por favor ingrese un número mayor o igual que 0.")
	}
}

func (p *prompter) askNonNegativeDecimal(label string, def *decimal.Decimal) (decimal.Decimal, error) {
	for {
		var answer string
		var err error
		if def != nil {
			answer, err = p.askDefault(label, def.String())
		} else {
			answer, err = p.ask(label)
		}
		if err != nil {
			return decimal.Zero, err
		}
		d, convErr := decimal.NewFromString(strings.ReplaceAll(answer, ",", "."))
		if convErr == nil && !d.IsNegative() {
			return d, nil
		}
		p.println("Por favor ingrese un valor en coronas mayor o igual que 0.")
	}
}
