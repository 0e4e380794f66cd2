package normalize

import (
	"github.com/ibnfzy/gizichain/internal/model"
)

// ParseConsultation builds a Consultation from a raw payload. Returns nil
// when the payload is not an object or carries no usable id.
func ParseConsultation(raw any) *model.Consultation {
	m := AsMap(raw)
	if m == nil {
		return nil
	}
	id := firstID(m, "id", "consultation_id")
	if id == "" {
		return nil
	}
	return &model.Consultation{
		ID:        id,
		MotherID:  firstID(m, "mother_id", "motherId"),
		PakarID:   firstID(m, "pakar_id", "pakarId"),
		Status:    firstString(m, "status"),
		Notes:     firstString(m, "notes", "catatan"),
		CreatedAt: firstString(m, "created_at", "createdAt"),
		UpdatedAt: firstString(m, "updated_at", "updatedAt"),
	}
}

// MostRecentConsultation picks the single most recent consultation, ordered
// by updatedAt falling back to createdAt, descending. The backend timestamps
// are ISO-8601 strings, so lexicographic comparison matches chronological
// order.
func MostRecentConsultation(list []model.Consultation) *model.Consultation {
	var best *model.Consultation
	bestKey := ""
	for i := range list {
		key := list[i].UpdatedAt
		if key == "" {
			key = list[i].CreatedAt
		}
		if best == nil || key > bestKey {
			best = &list[i]
			bestKey = key
		}
	}
	return best
}

// ParseConsultationMessage builds a ConsultationMessage. Returns nil when the
// payload is not an object.
func ParseConsultationMessage(raw any) *model.ConsultationMessage {
	m := AsMap(raw)
	if m == nil {
		return nil
	}
	return &model.ConsultationMessage{
		ID:            firstID(m, "id", "message_id"),
		Sender:        firstString(m, "sender", "sender_type", "from"),
		Text:          firstString(m, "text", "message", "body"),
		CreatedAt:     firstString(m, "created_at", "createdAt"),
		HumanizedTime: firstString(m, "created_at_human", "time"),
	}
}
