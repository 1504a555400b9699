// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/pdiddy/office-convert/internal/automation"
)

// SlideText renders a presentation as text: for each slide a "Slide N"
// header, its text lines, and a blank separator line. Slides whose shapes
// cannot be read are left out.
func SlideText(pres automation.Presentation) string {
	count, err := pres.SlideCount()
	if err != nil {
		return ""
	}

	var lines []string
	for i := 0; i < count; i++ {
		shapes, err := pres.SlideShapes(i)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("Slide %d", i+1))
		lines = append(lines, automation.Flatten(shapes)...)
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
