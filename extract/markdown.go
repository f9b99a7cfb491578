package extract

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

// mdConverter renders matched container HTML to Markdown for rich
// presentation layers. The converter is goroutine-safe and reused:
//
//   - base plugin: strips script, style, head, comments and other noise.
//   - commonmark plugin: standard Markdown rendering (headings, lists,
//     links, emphasis).
var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

// renderMissionMarkdown converts the matched mission container to Markdown.
// The page URL resolves relative links so the output is self-contained. Any
// conversion failure falls back to the plain text: rich rendering is never
// allowed to degrade the narrative itself.
func renderMissionMarkdown(res missionResult, pageURL string) string {
	if res.HTML == "" {
		return res.Text
	}
	md, err := mdConverter.ConvertString(res.HTML, converter.WithDomain(pageURL))
	if err != nil || strings.TrimSpace(md) == "" {
		return res.Text
	}
	return strings.TrimSpace(md)
}
