// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package console

import (
	"errors"
	"io"

	"github.com/chzyer/readline"
)

// ReadlineReader is a LineReader on top of a line editor supporting an
// in-memory history of the session's commands.
type ReadlineReader struct {
	instance *readline.Instance
}

// NewReadlineReader creates a line editor reading from in and echoing to out.
// The history is kept in memory only.
func NewReadlineReader(in io.ReadCloser, out io.Writer) (*ReadlineReader, error) {
	instance, err := readline.NewEx(&readline.Config{
		Prompt:                 Prompt,
		Stdin:                  in,
		Stdout:                 out,
		HistoryLimit:           1000,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, err
	}
	return &ReadlineReader{instance: instance}, nil
}

func (r *ReadlineReader) ReadLine() (string, error) {
	line, err := r.instance.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupted
	}
	return line, err
}

func (r *ReadlineReader) AddHistory(line string) error {
	return r.instance.SaveHistory(line)
}

func (r *ReadlineReader) Close() error {
	return r.instance.Close()
}
