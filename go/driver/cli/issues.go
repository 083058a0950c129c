// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.


package cliUtils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Fantom-foundation/Gaslighter/go/judge"
	"github.com/Fantom-foundation/Gaslighter/go/vector"
)

// Category groups issues by the way a vector failed.
type Category string

const (
	Construction Category = "construction" // < no machine could be created
	Mismatch     Category = "mismatch"     // < the run ended with an unexpected result
	Fault        Category = "fault"        // < the run faulted although a result was expected
)

var categories = []Category{Construction, Mismatch, Fault}

// Issue is a test vector failing a batch run.
type Issue struct {
	Vector   *vector.TestVector
	Category Category
	Detail   string
}

// IssuesCollector gathers the test vectors failing during a batch run. It is
// safe for concurrent use.
type IssuesCollector struct {
	issues []Issue
	mu     sync.Mutex
}

// AddConstructionFailure records a vector for which no machine could be
// created.
func (c *IssuesCollector) AddConstructionFailure(v *vector.TestVector, err error) {
	c.add(Issue{Vector: v, Category: Construction, Detail: err.Error()})
}

// AddVerdict records a vector judged with a failing verdict. Passing
// verdicts are ignored.
func (c *IssuesCollector) AddVerdict(v *vector.TestVector, verdict judge.Verdict) {
	if verdict.Passed() {
		return
	}
	category := Mismatch
	if verdict.Kind == judge.FailError {
		category = Fault
	}
	c.add(Issue{Vector: v, Category: category, Detail: verdict.String()})
}

func (c *IssuesCollector) add(issue Issue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issues = append(c.issues, issue)
}

func (c *IssuesCollector) NumIssues() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.issues)
}

// Count returns the number of issues in the given category.
func (c *IssuesCollector) Count(category Category) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, issue := range c.issues {
		if issue.Category == category {
			count++
		}
	}
	return count
}

// GetIssues returns the collected issues by category, each list ordered by
// vector name.
func (c *IssuesCollector) GetIssues() map[Category][]Issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := map[Category][]Issue{}
	for _, issue := range c.issues {
		res[issue.Category] = append(res[issue.Category], issue)
	}
	for _, list := range res {
		sort.Slice(list, func(i, j int) bool {
			return list[i].Vector.Name < list[j].Vector.Name
		})
	}
	return res
}

// ExportIssues lists the failing vectors per category on out and writes the
// vectors of each category into a single file of a fresh temporary
// directory. Each file is a vector file on its own and can be passed to the
// run or debug commands.
func (c *IssuesCollector) ExportIssues(out io.Writer) error {
	if c.NumIssues() == 0 {
		return nil
	}
	issues := c.GetIssues()
	jsonDir, err := os.MkdirTemp("", "gaslighter_issues_*")
	if err != nil {
		return fmt.Errorf("failed to create output directory for %d issues: %w", c.NumIssues(), err)
	}
	for _, category := range categories {
		list := issues[category]
		if len(list) == 0 {
			continue
		}
		fmt.Fprintf(out, "---- %s failures: %d\n", category, len(list))
		vectors := make(map[string]*vector.TestVector, len(list))
		for _, issue := range list {
			fmt.Fprintf(out, "%s: %s\n", issue.Vector.Name, issue.Detail)
			vectors[issue.Vector.Name] = issue.Vector
		}
		path := filepath.Join(jsonDir, string(category)+".json")
		if err := vector.ExportVectorsJSON(vectors, path); err != nil {
			fmt.Fprintf(out, "failed to dump test vectors: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "Test vectors dumped to %s\n", path)
	}
	return nil
}
