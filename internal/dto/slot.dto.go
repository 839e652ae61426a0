package dto

import "github.com/BruksfildServices01/slot-scheduler/internal/models"

type SlotDTO struct {
	ID         uint   `json:"id"`
	OperatorID uint   `json:"operator_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Status     string `json:"status"`
}

func Slots(list []models.ScheduleSlot) []SlotDTO {
	out := make([]SlotDTO, 0, len(list))
	for _, s := range list {
		out = append(out, Slot(&s))
	}
	return out
}

func Slot(s *models.ScheduleSlot) SlotDTO {
	return SlotDTO{
		ID:         s.ID,
		OperatorID: s.OperatorID,
		Date:       s.Date,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Status:     s.Status,
	}
}
