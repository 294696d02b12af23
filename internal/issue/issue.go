// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

// Id identifies a catalog entry.
type Id int

const (
	MissingIdentityId Id = iota + 1
	InvalidSpecId
	DescriptorUnreadableId
	ConfigLoadFailedId
	ToolchainUnavailableId
	SearchFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // reference documentation for the failure kind
	extLinks []HttpLink  // external links that might be useful for the user
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

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the entry, plus its links, with the named glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- " + string(link) + "\n"
		}
		for _, link := range i.extLinks {
			md += "- " + string(link) + "\n"
		}
	}
	return render(md, stylePath)
}

const pomReference HttpLink = "https://maven.apache.org/pom.html"

var (
	render = glamour.Render

	missingIdentityIssue = &Issue{
		id: MissingIdentityId,
		mdMsg: `
# No project id given

There is no descriptor at the target path, so pomctl needs coordinates to
create one.

## Things you can try:
- Name the artifact; group and version get defaults or come from a parent:
~~~
$ pomctl id my-app
~~~

- Give the full coordinates:
~~~
$ pomctl id com.example:my-app:1.0.0
~~~

- Use the directory name as the artifact:
~~~
$ pomctl id .
~~~`,
		docLinks: []HttpLink{pomReference + "#Maven_Coordinates"},
	}

	invalidSpecIssue = &Issue{
		id: InvalidSpecId,
		mdMsg: `
# Invalid project id

A project id has one to three colon-separated, non-empty parts:

| Form | Meaning |
|---|---|
| ` + "`artifact`" + ` | artifact only |
| ` + "`group:artifact`" + ` | group and artifact |
| ` + "`group:artifact:version`" + ` | full coordinates |

## Things you can try:
- Remove extra colons or empty segments such as ` + "`a::1`" + `
- Quote the id if your shell splits it`,
		docLinks: []HttpLink{pomReference + "#Maven_Coordinates"},
	}

	descriptorUnreadableIssue = &Issue{
		id: DescriptorUnreadableId,
		mdMsg: `
# Failed to read a project descriptor

A ` + "`pom.xml`" + ` either at the target path or in an ancestor directory
could not be parsed.

## Things you can try:
- Check that the file is well-formed XML with a ` + "`<project>`" + ` root
- Create the project without a parent:
~~~
$ pomctl id --standalone my-app
~~~`,
		docLinks: []HttpLink{pomReference},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

Your configuration file could not be loaded.

## Configuration file locations:
- Linux: ~/.config/pomctl/config.cue
- macOS: ~/Library/Application Support/pomctl/config.cue
- Windows: %APPDATA%\pomctl\config.cue

## Things you can try:
- Check CUE syntax and field names:
~~~
$ pomctl config dump
~~~

- Recreate the default configuration:
~~~
$ pomctl config init --force
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	toolchainUnavailableIssue = &Issue{
		id: ToolchainUnavailableId,
		mdMsg: `
# Java toolchain not detected

Compiler properties are only written when ` + "`java -version`" + ` reports a version.
The descriptor is still created without them.

## Things you can try:
- Put a JDK on your PATH
- Point pomctl at a specific binary in config.cue:
~~~cue
toolchain: { command: "/opt/jdk-21/bin/java -version" }
~~~`,
	}

	searchFailedIssue = &Issue{
		id: SearchFailedId,
		mdMsg: `
# Artifact search failed

The remote search index did not answer as expected.

## Things you can try:
- Check your network connection
- Override the endpoint in config.cue:
~~~cue
search: { base_url: "https://search.maven.org/solrsearch/select" }
~~~`,
		extLinks: []HttpLink{"https://central.sonatype.org/search/rest-api-guide/"},
	}

	issues = map[Id]*Issue{
		missingIdentityIssue.Id():      missingIdentityIssue,
		invalidSpecIssue.Id():          invalidSpecIssue,
		descriptorUnreadableIssue.Id(): descriptorUnreadableIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		toolchainUnavailableIssue.Id(): toolchainUnavailableIssue,
		searchFailedIssue.Id():         searchFailedIssue,
	}
)

// Values returns all catalog entries ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

// Get returns the entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
