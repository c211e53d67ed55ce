// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gosuri/uilive"
	"github.com/mattn/go-isatty"
)

// isTerminal reports whether w is a terminal, so that redrawing lines in
// place makes sense.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// progress redraws a "rows done" counter while the product is computed.
type progress struct {
	total  int
	done   atomic.Int64
	writer *uilive.Writer
	ticker *time.Ticker
	quit   chan struct{}
	wg     sync.WaitGroup
}

func startProgress(out io.Writer, total int) *progress {
	p := &progress{
		total:  total,
		writer: uilive.New(),
		ticker: time.NewTicker(50 * time.Millisecond),
		quit:   make(chan struct{}),
	}
	p.writer.Out = out
	p.writer.Start()
	p.render()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for {
			select {
			case <-p.quit:
				return
			case <-p.ticker.C:
				p.render()
			}
		}
	}()
	return p
}

func (p *progress) rowDone(worker, row int) {
	p.done.Add(1)
}

func (p *progress) render() {
	fmt.Fprintf(p.writer, "Rows computed: %d/%d\n", p.done.Load(), p.total)
}

func (p *progress) stop() {
	p.ticker.Stop()
	close(p.quit)
	p.wg.Wait()
	p.render()
	p.writer.Stop()
}
