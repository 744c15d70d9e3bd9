// Package term реализует построчный ввод полей формы в терминале.
package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/xerrors"
)

const defaultWidth = 100

// Prompter задает вопросы и читает ответы построчно.
type Prompter struct {
	in    *bufio.Reader
	out   io.Writer
	inFd  int
	outFd int
}

// NewPrompter создает Prompter для stdin/stdout.
func NewPrompter() *Prompter {
	return &Prompter{
		in:    bufio.NewReader(os.Stdin),
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

// NewPrompterFrom создает Prompter поверх произвольных потоков (не терминал).
func NewPrompterFrom(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:    bufio.NewReader(in),
		out:   out,
		inFd:  -1,
		outFd: -1,
	}
}

// Interactive сообщает, подключен ли ввод к терминалу.
func (p *Prompter) Interactive() bool {
	return p.inFd >= 0 && term.IsTerminal(p.inFd)
}

// Width возвращает ширину терминала или значение по умолчанию.
func (p *Prompter) Width() int {
	if p.outFd < 0 || !term.IsTerminal(p.outFd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(p.outFd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// Ask печатает вопрос и возвращает введенную строку без перевода строки.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		// последняя строка без '\n' все равно считается ответом
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", xerrors.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm задает вопрос да/нет. Пустой ответ означает "нет".
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Ask(label + " [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Println печатает строку в вывод Prompter.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}
