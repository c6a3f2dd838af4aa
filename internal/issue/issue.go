// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	FileNotFoundId Id = iota + 1
	DefinitionNotFoundId
	DefinitionInvalidId
	UnresolvedReferenceId
	UnsupportedValueId
	InvalidFlagArgumentId
	ConfigLoadFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id
	mdMsg    MarkdownMsg
	docLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the help page with a glamour style: "auto", "dark",
// "light" or "notty".
func (i *Issue) Render(style string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), style)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found!

A file named on the command line does not exist or is not readable.

## Things you can try:
- Check the path for typos
- Paths are resolved relative to the current directory`,
	}

	definitionNotFoundIssue = &Issue{
		id: DefinitionNotFoundId,
		mdMsg: `
# No operation definition found!

The name was not a file path and no matching definition exists in the
search path.

## Search order:
1. Directories passed with ` + "`--search-path`" + `
2. ` + "`search_path`" + ` entries in your config file

Each directory is searched for ` + "`<name>.cue`" + `, ` + "`.yaml`" + `, ` + "`.yml`" + `,
` + "`.toml`" + `, ` + "`.json`" + ` and ` + "`.jsonc`" + `, in that order.

## Things you can try:
~~~
$ opcmd config show
$ opcmd generate ./ops/train.cue
~~~`,
	}

	definitionInvalidIssue = &Issue{
		id: DefinitionInvalidId,
		mdMsg: `
# Operation definition is malformed!

## Expected shape:
~~~cue
args: ["python", "train.py", "__flag_args__"]
env: {
	MODE: "train"
}
flags: {
	learning_rate: {"arg-name": "lr", "env-name": "LR"}
	verbose: {"arg-switch": true}
	seed: {"arg-skip": true}
}
~~~

## Rules:
- ` + "`args`" + ` is a list of strings with at most one ` + "`__flag_args__`" + ` marker
- ` + "`env`" + ` values are scalars or flat lists
- each ` + "`flags`" + ` entry is a mapping using only ` + "`arg-name`" + `, ` + "`arg-skip`" + `,
  ` + "`arg-switch`" + ` and ` + "`env-name`" + ``,
	}

	unresolvedReferenceIssue = &Issue{
		id: UnresolvedReferenceId,
		mdMsg: `
# Unresolved reference!

An argument contains ` + "`${name}`" + ` but no resolve parameter with that name was given.

## Things you can try:
- Pass it with ` + "`--param name=value`" + `
- Load parameters from a dotenv file with ` + "`--params-file`" + `
- Write ` + "`$${name}`" + ` to keep a literal ` + "`${name}`" + ``,
	}

	unsupportedValueIssue = &Issue{
		id: UnsupportedValueId,
		mdMsg: `
# Unsupported value!

Flag values must be booleans, numbers or strings. Lists are only accepted in
environment templates and as switch values, and they must be flat.`,
	}

	invalidFlagArgumentIssue = &Issue{
		id: InvalidFlagArgumentId,
		mdMsg: `
# Invalid flag argument!

Flags are given as ` + "`--flag name=value`" + `. The value is read as YAML, so
` + "`true`" + `, ` + "`3`" + ` and ` + "`0.5`" + ` become typed values. ` + "`--flag name`" + ` without
a value marks the flag as absent.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Print the config location:
~~~
$ opcmd config path
~~~
- Recreate a default file:
~~~
$ opcmd config init --force
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

## Things you can try:
- Check file and directory permissions
- Write output to a directory you own`,
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():        fileNotFoundIssue,
		definitionNotFoundIssue.Id():  definitionNotFoundIssue,
		definitionInvalidIssue.Id():   definitionInvalidIssue,
		unresolvedReferenceIssue.Id(): unresolvedReferenceIssue,
		unsupportedValueIssue.Id():    unsupportedValueIssue,
		invalidFlagArgumentIssue.Id(): invalidFlagArgumentIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		permissionDeniedIssue.Id():    permissionDeniedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
