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

package generator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/zirkelc/gqlcodegen/codegen/config"
	"github.com/zirkelc/gqlcodegen/codegen/generator"
	"github.com/zirkelc/gqlcodegen/codegen/gocode"
	"github.com/zirkelc/gqlcodegen/internal/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestGenerator(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Generator Suite")
}

const testSchema = `
  type Task {
    id: ID!
    title: String!
  }

  type Query {
    task(id: ID!): Task
    tasks: [Task!]!
  }
`

const testQuery = `
  query GetTask($id: ID!) {
    task(id: $id) {
      id
      title
    }
  }
`

// scaffold writes a working project layout and returns its directory.
func scaffold(configYAML string) string {
	dir := GinkgoT().TempDir()
	write := func(name, content string) {
		p := filepath.Join(dir, filepath.FromSlash(name))
		Expect(os.MkdirAll(filepath.Dir(p), 0o755)).Should(Succeed())
		Expect(os.WriteFile(p, []byte(util.Dedent(content)), 0o644)).Should(Succeed())
	}
	write("schema.graphql", testSchema)
	write("queries/get_task.graphql", testQuery)
	write(config.DefaultFilename, configYAML)
	return dir
}

const sdkConfig = `
  schema: schema.graphql
  documents: "queries/**/*.graphql"
  generates:
    generated/sdk.go:
      plugins:
        - schematypes
        - operations
        - gosdk
      config:
        package: sdk
    generated/manifest.json:
      - manifest
`

func loadConfig(dir string) *config.Config {
	cfg, err := config.Load(filepath.Join(dir, config.DefaultFilename))
	Expect(err).ShouldNot(HaveOccurred())
	return cfg
}

var _ = Describe("Generate", func() {
	It("writes every configured target", func() {
		dir := scaffold(sdkConfig)

		err := generator.Generate(context.Background(), loadConfig(dir), generator.Options{Dir: dir})
		Expect(err).ShouldNot(HaveOccurred())

		sdk, err := os.ReadFile(filepath.Join(dir, "generated", "sdk.go"))
		Expect(err).ShouldNot(HaveOccurred())
		text := string(sdk)
		Expect(text).Should(HavePrefix(gocode.Header + "\n"))
		Expect(text).Should(ContainSubstring("package sdk"))
		Expect(text).Should(ContainSubstring("const GetTaskDocument ="))
		Expect(text).Should(ContainSubstring("type GetTaskResponse struct {"))
		Expect(text).Should(ContainSubstring("func (sdk *SDK) GetTask(ctx context.Context"))

		raw, err := os.ReadFile(filepath.Join(dir, "generated", "manifest.json"))
		Expect(err).ShouldNot(HaveOccurred())
		var decoded map[string]string
		Expect(jsoniter.Unmarshal(raw, &decoded)).Should(Succeed())
		Expect(decoded).Should(HaveLen(1))
	})

	It("produces formatted Go", func() {
		dir := scaffold(sdkConfig)

		Expect(generator.Generate(
			context.Background(), loadConfig(dir), generator.Options{Dir: dir})).Should(Succeed())

		sdk, err := os.ReadFile(filepath.Join(dir, "generated", "sdk.go"))
		Expect(err).ShouldNot(HaveOccurred())

		formatted, err := gocode.Format("sdk.go", sdk)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(formatted).Should(Equal(sdk))
	})

	It("writes nothing in dry-run mode", func() {
		dir := scaffold(sdkConfig)

		err := generator.Generate(
			context.Background(), loadConfig(dir), generator.Options{Dir: dir, DryRun: true})
		Expect(err).ShouldNot(HaveOccurred())

		_, err = os.Stat(filepath.Join(dir, "generated"))
		Expect(os.IsNotExist(err)).Should(BeTrue())
	})

	It("fails fast on unknown plugin names, with a suggestion", func() {
		dir := scaffold(`
      schema: schema.graphql
      documents: "queries/**/*.graphql"
      generates:
        generated/sdk.go:
          - schematype
    `)

		err := generator.Generate(context.Background(), loadConfig(dir), generator.Options{Dir: dir})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring(`unknown plugin "schematype"`))
		Expect(err.Error()).Should(ContainSubstring(`did you mean "schematypes"?`))
	})

	It("enforces plugin ordering constraints before loading anything", func() {
		dir := scaffold(`
      schema: does-not-exist.graphql
      documents: "queries/**/*.graphql"
      generates:
        generated/sdk.go:
          - gosdk
    `)

		// The broken schema pointer is never touched: the config is rejected first.
		err := generator.Generate(context.Background(), loadConfig(dir), generator.Options{Dir: dir})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring(`requires "operations"`))
	})

	It("derives the package name from the output directory", func() {
		dir := scaffold(`
      schema: schema.graphql
      documents: "queries/**/*.graphql"
      generates:
        sdk/generated.go:
          plugins:
            - schematypes
            - operations
    `)

		Expect(generator.Generate(
			context.Background(), loadConfig(dir), generator.Options{Dir: dir})).Should(Succeed())

		out, err := os.ReadFile(filepath.Join(dir, "sdk", "generated.go"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(out)).Should(ContainSubstring("package sdk"))
	})

	It("rejects targets whose derived package name is not a Go identifier", func() {
		dir := scaffold(`
      schema: schema.graphql
      documents: "queries/**/*.graphql"
      generates:
        my-sdk/generated.go:
          plugins:
            - schematypes
            - operations
    `)

		err := generator.Generate(context.Background(), loadConfig(dir), generator.Options{Dir: dir})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring("not a valid Go package name"))
	})

	It("replaces an existing target atomically", func() {
		dir := scaffold(sdkConfig)
		out := filepath.Join(dir, "generated", "sdk.go")
		Expect(os.MkdirAll(filepath.Dir(out), 0o755)).Should(Succeed())
		Expect(os.WriteFile(out, []byte("stale"), 0o644)).Should(Succeed())

		Expect(generator.Generate(
			context.Background(), loadConfig(dir), generator.Options{Dir: dir})).Should(Succeed())

		data, err := os.ReadFile(out)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(data)).ShouldNot(ContainSubstring("stale"))

		// The temporary file is gone either way.
		entries, err := os.ReadDir(filepath.Dir(out))
		Expect(err).ShouldNot(HaveOccurred())
		for _, entry := range entries {
			Expect(entry.Name()).ShouldNot(ContainSubstring(".tmp-"))
		}
	})
})

var _ = Describe("Watch", func() {
	It("runs immediately and again after a document changes", func() {
		dir := scaffold(sdkConfig)
		out := filepath.Join(dir, "generated", "sdk.go")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- generator.Watch(ctx, filepath.Join(dir, config.DefaultFilename), generator.Options{Dir: dir})
		}()

		Eventually(func() string {
			data, _ := os.ReadFile(out)
			return string(data)
		}, 5*time.Second, 50*time.Millisecond).Should(ContainSubstring("GetTaskDocument"))

		// Rename the operation; the watcher should regenerate with the new name.
		Expect(os.WriteFile(
			filepath.Join(dir, "queries", "get_task.graphql"),
			[]byte(util.Dedent(`
        query FetchTask($id: ID!) {
          task(id: $id) {
            id
          }
        }
      `)), 0o644)).Should(Succeed())

		Eventually(func() string {
			data, _ := os.ReadFile(out)
			return string(data)
		}, 5*time.Second, 50*time.Millisecond).Should(ContainSubstring("FetchTaskDocument"))

		cancel()
		Eventually(done, 5*time.Second).Should(Receive(MatchError(context.Canceled)))
	})
})
