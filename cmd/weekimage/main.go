package main

import (
	"fmt"
	"os"
	"time"

	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
	"github.com/uzeyirrr/yenicrm-sub000/internal/notify"
)

// Renders a sample week to week.png for eyeballing the grid layout.
func main() {
	weekStart, _ := model.WeekBounds(time.Now())
	monday, _ := time.Parse("2006-01-02", weekStart)

	slots := []*model.Slot{
		{
			ID:    "slot-mo",
			Name:  "Beratung Vormittag",
			Date:  monday.Format("2006-01-02"),
			Start: "09:00",
			End:   "12:00",
			Space: 60,
		},
		{
			ID:    "slot-di",
			Name:  "Beratung Nachmittag",
			Date:  monday.AddDate(0, 0, 1).Format("2006-01-02"),
			Start: "13:00",
			End:   "17:00",
			Space: 120,
		},
	}

	appts := map[string][]*model.Appointment{
		"slot-mo": {
			{ID: "a1", SlotID: "slot-mo", Time: "09:00", Status: model.AppointmentStatusOkay},
			{ID: "a2", SlotID: "slot-mo", Time: "10:00", Status: model.AppointmentStatusEdit},
			{ID: "a3", SlotID: "slot-mo", Time: "11:00", Status: model.AppointmentStatusEmpty},
		},
		"slot-di": {
			{ID: "b1", SlotID: "slot-di", Time: "13:00", Status: model.AppointmentStatusEmpty},
			{ID: "b2", SlotID: "slot-di", Time: "15:00", Status: model.AppointmentStatusOkay},
		},
	}

	png, err := notify.RenderWeek(weekStart, slots, appts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render week: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile("week.png", png, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write week.png: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("wrote week.png")
}
