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

// Package gosdk generates a typed SDK over the generic GraphQL client: one method per operation,
// taking the operation's variables struct and returning its response struct. It builds on the
// constants and types the operations plugin emits, so that plugin must run earlier in the same
// target.
package gosdk

import (
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/zirkelc/gqlcodegen/codegen"
	"github.com/zirkelc/gqlcodegen/codegen/config"
	"github.com/zirkelc/gqlcodegen/codegen/gocode"
	"github.com/zirkelc/gqlcodegen/codegen/plugins/operations"
)

// PluginName is the identifier targets reference this plugin by.
const PluginName = "gosdk"

// clientPackage is the generic GraphQL client the generated SDK delegates to.
const clientPackage = "github.com/zirkelc/gqlcodegen/gqlclient"

type plugin struct{}

// New creates the gosdk plugin.
func New() codegen.Plugin {
	return plugin{}
}

func (plugin) Name() string {
	return PluginName
}

// ValidateConfig enforces that operations runs earlier in the same target.
func (plugin) ValidateConfig(target config.Target) error {
	for _, name := range target.Plugins {
		switch name {
		case operations.PluginName:
			return nil
		case PluginName:
			return codegen.NewError(
				fmt.Sprintf("plugin %q requires %q to run before it in the same target",
					PluginName, operations.PluginName),
				codegen.ErrKindConfig)
		}
	}
	return nil
}

func (plugin) Generate(input *codegen.Input) (*codegen.File, error) {
	subscriptions := false
	var names []string
	byName := make(map[string]*ast.OperationDefinition)
	for _, operation := range input.Document.Operations {
		if operation.Name == "" {
			return nil, codegen.NewError(
				"anonymous operations cannot produce SDK methods; give the operation a name",
				codegen.Op("gosdk.Generate"), codegen.ErrKindPlugin)
		}
		if operation.Operation == ast.Subscription {
			if input.Config.OmitSubscriptions {
				continue
			}
			subscriptions = true
		}
		names = append(names, operation.Name)
		byName[operation.Name] = operation
	}
	sort.Strings(names)

	var w gocode.Writer
	w.Import(clientPackage)
	w.Import("context")

	w.Line("// SDK executes the generated operations against a GraphQL endpoint.")
	w.Line("type SDK struct {")
	w.Line("\tclient gqlclient.Client")
	w.Line("}")
	w.Blank()
	w.Line("// NewSDK wraps a GraphQL client with typed operation methods.")
	w.Line("func NewSDK(client gqlclient.Client) *SDK {")
	w.Line("\treturn &SDK{client: client}")
	w.Line("}")
	w.Blank()

	if subscriptions {
		w.Import("errors")
		w.Line("// ErrSubscriptionsUnsupported is returned by subscription methods: the HTTP transport")
		w.Line("// cannot deliver a result stream.")
		w.Line(`var ErrSubscriptionsUnsupported = errors.New("subscriptions are not supported over the HTTP transport")`)
		w.Blank()
	}

	for _, name := range names {
		writeMethod(&w, byName[name])
	}

	return w.File(), nil
}

func writeMethod(w *gocode.Writer, operation *ast.OperationDefinition) {
	name := gocode.ExportedName(operation.Name)
	hasVariables := len(operation.VariableDefinitions) > 0

	signature := fmt.Sprintf("func (sdk *SDK) %s(ctx context.Context", name)
	if hasVariables {
		signature += fmt.Sprintf(", variables %sVariables", name)
	}
	signature += fmt.Sprintf(") (*%sResponse, error) {", name)

	w.Linef("// %s executes the %s %s.", name, operation.Name, operation.Operation)
	w.Line(signature)

	if operation.Operation == ast.Subscription {
		w.Line("\treturn nil, ErrSubscriptionsUnsupported")
		w.Line("}")
		w.Blank()
		return
	}

	w.Linef("\tvar response %sResponse", name)
	w.Line("\treq := &gqlclient.Request{")
	w.Linef("\t\tQuery:         %sDocument,", name)
	w.Linef("\t\tOperationName: %sOperationName,", name)
	if hasVariables {
		w.Line("\t\tVariables:     variables,")
	}
	w.Line("\t}")
	w.Line("\tif err := sdk.client.Do(ctx, req, &response); err != nil {")
	w.Line("\t\treturn nil, err")
	w.Line("\t}")
	w.Line("\treturn &response, nil")
	w.Line("}")
	w.Blank()
}
