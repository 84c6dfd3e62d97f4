package visual

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strings"

	"github.com/ppiankov/sentistream/internal/model"
)

// Shared chart geometry.
const (
	chartWidth  = 720
	chartHeight = 400
	chartPad    = 56
)

// labelColors matches the palette across all charts.
var labelColors = map[model.Sentiment]string{
	model.SentimentPositive: "#2ca02c",
	model.SentimentNeutral:  "#7f7f7f",
	model.SentimentNegative: "#d62728",
}

// scoreColors are the per-component colors in the grouped mean chart.
var scoreColors = [3]string{"#d62728", "#7f7f7f", "#2ca02c"} // neg, neu, pos

func svgOpen(b *strings.Builder, title string) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`+"\n",
		chartWidth, chartHeight, chartWidth, chartHeight)
	fmt.Fprintf(b, `<rect width="%d" height="%d" fill="white"/>`+"\n", chartWidth, chartHeight)
	fmt.Fprintf(b, `<text x="%d" y="28" text-anchor="middle" font-size="18">%s</text>`+"\n",
		chartWidth/2, html.EscapeString(title))
}

func svgText(b *strings.Builder, x, y float64, anchor string, size int, text string) {
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" text-anchor="%s" font-size="%d">%s</text>`+"\n",
		x, y, anchor, size, html.EscapeString(text))
}

// lineSVG draws the compound score over time: one point per row in
// stream order, with a dashed zero axis. Compound values live in
// [-1, 1], so the y scale is fixed.
func lineSVG(compounds []float64, labels []string) string {
	var b strings.Builder
	svgOpen(&b, "Sentiment Over Time")

	left, right := float64(chartPad), float64(chartWidth-chartPad)
	top, bottom := float64(chartPad), float64(chartHeight-chartPad)
	midY := (top + bottom) / 2

	// Axes and the zero line.
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n", left, top, left, bottom)
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n", left, bottom, right, bottom)
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#d62728" stroke-dasharray="6 4"/>`+"\n", left, midY, right, midY)

	ticks := []struct {
		v     float64
		label string
	}{{1, "1.0"}, {0, "0.0"}, {-1, "-1.0"}}
	for _, tick := range ticks {
		y := midY - tick.v*(bottom-top)/2
		svgText(&b, left-8, y+4, "end", 11, tick.label)
	}
	svgText(&b, 18, (top+bottom)/2, "middle", 12, "Compound")

	n := len(compounds)
	step := 0.0
	if n > 1 {
		step = (right - left) / float64(n-1)
	}

	points := make([]string, n)
	for i, c := range compounds {
		x := left + float64(i)*step
		if n == 1 {
			x = (left + right) / 2
		}
		y := midY - c*(bottom-top)/2
		points[i] = fmt.Sprintf("%.1f,%.1f", x, y)
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="3" fill="#1f77b4"/>`+"\n", x, y)
	}
	if n > 1 {
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#1f77b4" stroke-width="1.5"/>`+"\n", strings.Join(points, " "))
	}

	// Tick labels, thinned so they stay legible.
	tickEvery := 1
	if n > 12 {
		tickEvery = (n + 11) / 12
	}
	for i := 0; i < n; i += tickEvery {
		x := left + float64(i)*step
		if n == 1 {
			x = (left + right) / 2
		}
		svgText(&b, x, bottom+18, "middle", 10, labels[i])
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// barsSVG draws per-label record counts.
func barsSVG(counts map[model.Sentiment]int) string {
	var b strings.Builder
	svgOpen(&b, "Sentiment Distribution")

	left, right := float64(chartPad), float64(chartWidth-chartPad)
	top, bottom := float64(chartPad), float64(chartHeight-chartPad)

	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n", left, top, left, bottom)
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n", left, bottom, right, bottom)

	maxCount := 1
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	slot := (right - left) / float64(len(chartOrder))
	barWidth := slot * 0.6

	for i, label := range chartOrder {
		count := counts[label]
		h := float64(count) / float64(maxCount) * (bottom - top)
		x := left + float64(i)*slot + (slot-barWidth)/2
		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			x, bottom-h, barWidth, h, labelColors[label])
		svgText(&b, x+barWidth/2, bottom-h-6, "middle", 12, fmt.Sprintf("%d", count))
		svgText(&b, x+barWidth/2, bottom+18, "middle", 12, string(label))
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// groupedBarsSVG draws mean neg/neu/pos per sentiment label.
func groupedBarsSVG(averages map[model.Sentiment][3]float64) string {
	var b strings.Builder
	svgOpen(&b, "Average Sentiment Scores")

	left, right := float64(chartPad), float64(chartWidth-chartPad)
	top, bottom := float64(chartPad), float64(chartHeight-chartPad)

	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n", left, top, left, bottom)
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n", left, bottom, right, bottom)

	// Proportions are in [0, 1].
	for _, v := range []float64{0, 0.5, 1} {
		y := bottom - v*(bottom-top)
		svgText(&b, left-8, y+4, "end", 11, fmt.Sprintf("%.1f", v))
	}

	groups := make([]model.Sentiment, 0, len(averages))
	for label := range averages {
		groups = append(groups, label)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })

	slot := (right - left) / float64(len(groups))
	barWidth := slot / 4

	for i, label := range groups {
		vals := averages[label]
		for j, v := range vals {
			h := v * (bottom - top)
			x := left + float64(i)*slot + slot/8 + float64(j)*barWidth
			fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
				x, bottom-h, barWidth*0.9, h, scoreColors[j])
		}
		svgText(&b, left+float64(i)*slot+slot/2, bottom+18, "middle", 12, string(label))
	}

	// Legend.
	for j, name := range []string{"neg", "neu", "pos"} {
		x := right - 160 + float64(j)*56
		fmt.Fprintf(&b, `<rect x="%.1f" y="36" width="12" height="12" fill="%s"/>`+"\n", x, scoreColors[j])
		svgText(&b, x+16, 46, "start", 11, name)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// pieSVG draws the per-label share of records as pie wedges. An empty
// dataset renders a placeholder instead of a degenerate pie.
func pieSVG(counts map[model.Sentiment]int) string {
	var b strings.Builder
	svgOpen(&b, "Sentiment Distribution")

	total := 0
	for _, c := range counts {
		total += c
	}

	cx, cy := float64(chartWidth)/2, float64(chartHeight)/2+12
	radius := float64(chartHeight)/2 - float64(chartPad) - 12

	if total == 0 {
		svgText(&b, cx, cy, "middle", 16, "No data to display")
		b.WriteString("</svg>\n")
		return b.String()
	}

	angle := -math.Pi / 2
	for _, label := range chartOrder {
		count := counts[label]
		if count == 0 {
			continue
		}
		frac := float64(count) / float64(total)
		next := angle + frac*2*math.Pi

		if frac >= 1 {
			fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", cx, cy, radius, labelColors[label])
		} else {
			x0, y0 := cx+radius*math.Cos(angle), cy+radius*math.Sin(angle)
			x1, y1 := cx+radius*math.Cos(next), cy+radius*math.Sin(next)
			largeArc := 0
			if next-angle > math.Pi {
				largeArc = 1
			}
			fmt.Fprintf(&b, `<path d="M%.1f,%.1f L%.1f,%.1f A%.1f,%.1f 0 %d 1 %.1f,%.1f Z" fill="%s"/>`+"\n",
				cx, cy, x0, y0, radius, radius, largeArc, x1, y1, labelColors[label])
		}

		mid := (angle + next) / 2
		lx, ly := cx+radius*0.62*math.Cos(mid), cy+radius*0.62*math.Sin(mid)
		svgText(&b, lx, ly, "middle", 12, fmt.Sprintf("%s %.1f%%", label, frac*100))

		angle = next
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// dashboardHTML renders the index page embedding whichever chart
// artifacts were produced.
func dashboardHTML(rows int, artifacts map[string]string) string {
	figures := []struct {
		file, caption string
	}{
		{OvertimeFile, "Compound score over time"},
		{DistributionFile, "Sentiment distribution"},
		{AverageFile, "Average sentiment scores"},
		{PieFile, "Sentiment share"},
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n<title>Sentiment Analysis Dashboard</title>\n")
	b.WriteString("<style>body{font-family:sans-serif;margin:2em;background:#fafafa}figure{display:inline-block;margin:1em;padding:1em;background:white;box-shadow:0 1px 3px rgba(0,0,0,.2)}figcaption{text-align:center;color:#555;margin-top:.5em}</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString("<h1>Sentiment Analysis Dashboard</h1>\n")
	fmt.Fprintf(&b, "<p>%d records analysed.</p>\n", rows)
	for _, fig := range figures {
		if _, ok := artifacts[fig.file]; !ok {
			continue
		}
		fmt.Fprintf(&b, "<figure>\n<img src=%q alt=%q width=\"640\">\n<figcaption>%s</figcaption>\n</figure>\n",
			fig.file, fig.caption, html.EscapeString(fig.caption))
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
