package notify

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
	"golang.org/x/image/font/basicfont"
)

const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 100
	leftLabelsWidth = 80
	legendWidth     = 120
	dayPaddingX     = 8
	totalDays       = 7
	hourPadding     = 1
	defaultMinHour  = 8
	defaultMaxHour  = 20
)

var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	emptyColor = color.RGBA{133, 193, 85, 220}  // bookable
	editColor  = color.RGBA{255, 200, 100, 230} // claimed
	okayColor  = color.RGBA{255, 182, 193, 255} // booked
	cellText   = color.RGBA{20, 24, 28, 230}
)

var dayNames = [totalDays]string{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"}

// RenderWeek draws the visible week as a grid: one column per day, one
// cell per appointment, colored by status. rangeStart must be the Monday
// of the week in YYYY-MM-DD form.
func RenderWeek(rangeStart string, slots []*model.Slot, appts map[string][]*model.Appointment) ([]byte, error) {
	monday, err := time.Parse("2006-01-02", rangeStart)
	if err != nil {
		return nil, fmt.Errorf("parse week start: %w", err)
	}

	minHour, maxHour := hourRange(slots)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDays
	gridHeight := float64(imageHeight - headerHeight)
	totalMinutes := float64((maxHour - minHour + 1) * 60)
	pxPerMinute := gridHeight / totalMinutes

	drawHourLabels(dc, minHour, maxHour, pxPerMinute)

	for day := 0; day < totalDays; day++ {
		date := monday.AddDate(0, 0, day).Format("2006-01-02")
		x := float64(leftLabelsWidth + day*dayWidth)

		if day%2 == 0 {
			dc.SetColor(evenDayColor)
		} else {
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(x, headerHeight, float64(dayWidth), gridHeight)
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(dayNames[day]+" "+date[8:]+"."+date[5:7],
			x+float64(dayWidth)/2, headerHeight/2, 0.5, 0.5)

		for _, slot := range slots {
			if model.NormalizeDate(slot.Date) != date {
				continue
			}
			drawSlot(dc, slot, appts[slot.ID], x, dayWidth, minHour, pxPerMinute)
		}
	}

	drawLegend(dc)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSlot(dc *gg.Context, slot *model.Slot, appts []*model.Appointment, x float64, dayWidth, minHour int, pxPerMinute float64) {
	for _, appt := range appts {
		at, err := model.MinuteOfDay(appt.Time)
		if err != nil {
			continue
		}

		y := float64(headerHeight) + float64(at-minHour*60)*pxPerMinute
		h := float64(slot.Space) * pxPerMinute

		switch appt.Status {
		case model.AppointmentStatusEdit:
			dc.SetColor(editColor)
		case model.AppointmentStatusOkay:
			dc.SetColor(okayColor)
		default:
			dc.SetColor(emptyColor)
		}
		dc.DrawRoundedRectangle(x+dayPaddingX, y+1, float64(dayWidth)-2*dayPaddingX, h-2, 4)
		dc.Fill()

		if h >= 14 {
			dc.SetColor(cellText)
			dc.DrawString(appt.Time, x+dayPaddingX+4, y+12)
		}
	}
}

func drawHourLabels(dc *gg.Context, minHour, maxHour int, pxPerMinute float64) {
	dc.SetColor(hourLabelColor)
	for h := minHour; h <= maxHour; h++ {
		y := float64(headerHeight) + float64((h-minHour)*60)*pxPerMinute
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", h), leftLabelsWidth-10, y, 1, 0.5)

		dc.SetColor(hourLineColor)
		dc.DrawLine(leftLabelsWidth, y, imageWidth-legendWidth, y)
		dc.SetLineWidth(0.5)
		dc.Stroke()
		dc.SetColor(hourLabelColor)
	}
}

func drawLegend(dc *gg.Context) {
	entries := []struct {
		label string
		col   color.Color
	}{
		{"frei", emptyColor},
		{"in Arbeit", editColor},
		{"gebucht", okayColor},
	}

	x := float64(imageWidth - legendWidth + 10)
	y := float64(headerHeight + 10)

	for _, e := range entries {
		dc.SetColor(e.col)
		dc.DrawRectangle(x, y, 14, 14)
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawString(e.label, x+20, y+11)
		y += 24
	}
}

// hourRange picks the displayed hours from the slot windows, padded by one
// hour each side.
func hourRange(slots []*model.Slot) (int, int) {
	minHour, maxHour := 24, 0
	for _, slot := range slots {
		from, err1 := model.MinuteOfDay(slot.Start)
		to, err2 := model.MinuteOfDay(slot.End)
		if err1 != nil || err2 != nil {
			continue
		}
		if from/60 < minHour {
			minHour = from / 60
		}
		endHour := to / 60
		if to%60 > 0 {
			endHour++
		}
		if endHour > maxHour {
			maxHour = endHour
		}
	}

	if minHour == 24 {
		return defaultMinHour, defaultMaxHour
	}

	minHour -= hourPadding
	maxHour += hourPadding
	if minHour < 0 {
		minHour = 0
	}
	if maxHour > 23 {
		maxHour = 23
	}
	return minHour, maxHour
}
