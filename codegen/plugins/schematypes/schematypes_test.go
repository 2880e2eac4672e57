/**
 * Copyright (c) 2026, The gqlcodegen Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package schematypes_test

import (
	"testing"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/zirkelc/gqlcodegen/codegen"
	"github.com/zirkelc/gqlcodegen/codegen/config"
	"github.com/zirkelc/gqlcodegen/codegen/plugins/schematypes"
	"github.com/zirkelc/gqlcodegen/internal/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSchematypes(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Schematypes Suite")
}

const testSDL = `
  scalar DateTime
  scalar JSON

  enum TaskState {
    OPEN
    IN_PROGRESS
    DONE
  }

  input TaskFilter {
    states: [TaskState!]
    createdAfter: DateTime
    parent: TaskFilter
    limit: Int!
  }

  type Task {
    id: ID!
    state: TaskState!
    payload: JSON
    createdAt: DateTime!
  }

  type Query {
    tasks(filter: TaskFilter): [Task!]!
    task(id: ID!): Task
  }
`

func loadInput(query string, cfg config.TargetConfig) *codegen.Input {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: util.Dedent(testSDL)})
	Expect(err).ShouldNot(HaveOccurred())

	doc, listErr := gqlparser.LoadQuery(schema, util.Dedent(query))
	Expect(listErr).Should(BeEmpty())

	return &codegen.Input{Schema: schema, Document: doc, Config: cfg}
}

func generate(query string, cfg config.TargetConfig) string {
	file, err := schematypes.New().Generate(loadInput(query, cfg))
	Expect(err).ShouldNot(HaveOccurred())
	return string(file.Content)
}

var _ = Describe("Generate", func() {
	It("emits enums reachable through selections", func() {
		out := generate(`
      query States {
        tasks {
          state
        }
      }
    `, config.TargetConfig{})

		Expect(out).Should(ContainSubstring("type TaskState string"))
		Expect(out).Should(ContainSubstring(`TaskStateOpen TaskState = "OPEN"`))
		Expect(out).Should(ContainSubstring(`TaskStateInProgress TaskState = "IN_PROGRESS"`))
		Expect(out).Should(ContainSubstring(`TaskStateDone TaskState = "DONE"`))
		Expect(out).Should(ContainSubstring("var AllTaskState = []TaskState{"))
		Expect(out).Should(ContainSubstring("func (v TaskState) IsValid() bool {"))
	})

	It("emits input objects reachable through variables, recursively", func() {
		out := generate(`
      query Filtered($filter: TaskFilter) {
        tasks(filter: $filter) {
          id
        }
      }
    `, config.TargetConfig{})

		Expect(out).Should(ContainSubstring("type TaskFilter struct {"))
		// Nullable fields are pointers with omitempty; lists stay slices.
		Expect(out).Should(ContainSubstring("States []TaskState `json:\"states,omitempty\"`"))
		Expect(out).Should(ContainSubstring("Parent *TaskFilter `json:\"parent,omitempty\"`"))
		Expect(out).Should(ContainSubstring("Limit int64 `json:\"limit\"`"))
		// TaskState is reachable through TaskFilter even though no selection returns it.
		Expect(out).Should(ContainSubstring("type TaskState string"))
	})

	It("aliases unmapped custom scalars to raw JSON", func() {
		out := generate(`
      query Payloads {
        tasks {
          payload
        }
      }
    `, config.TargetConfig{})

		Expect(out).Should(ContainSubstring("type JSON = json.RawMessage"))
	})

	It("declares nothing for scalars mapped in config", func() {
		out := generate(`
      query Created {
        tasks {
          createdAt
        }
      }
    `, config.TargetConfig{Scalars: map[string]string{"DateTime": "time.Time"}})

		Expect(out).ShouldNot(ContainSubstring("DateTime"))
	})

	It("uses the configured scalar type in input objects", func() {
		out := generate(`
      query Filtered($filter: TaskFilter) {
        tasks(filter: $filter) {
          id
        }
      }
    `, config.TargetConfig{Scalars: map[string]string{"DateTime": "time.Time"}})

		Expect(out).Should(ContainSubstring("CreatedAfter *time.Time `json:\"createdAfter,omitempty\"`"))
	})

	It("skips schema types the document never touches", func() {
		out := generate(`
      query Ids {
        tasks {
          id
        }
      }
    `, config.TargetConfig{})

		Expect(out).ShouldNot(ContainSubstring("TaskState"))
		Expect(out).ShouldNot(ContainSubstring("TaskFilter"))
	})
})

var _ = Describe("EnumValueName", func() {
	It("title-cases screaming snake case values", func() {
		Expect(schematypes.EnumValueName("TaskState", "IN_PROGRESS")).Should(Equal("TaskStateInProgress"))
		Expect(schematypes.EnumValueName("TaskState", "OPEN")).Should(Equal("TaskStateOpen"))
	})
})
