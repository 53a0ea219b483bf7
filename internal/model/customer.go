package model

// QCOnStatus is the pre-quality-control pipeline stage.
type QCOnStatus string

const (
	QCOnYeni           QCOnStatus = "Yeni"
	QCOnAranacak       QCOnStatus = "Aranacak"
	QCOnRausgefallen   QCOnStatus = "Rausgefallen"
	QCOnRausgefallenWP QCOnStatus = "Rausgefallen WP"
)

// QCFinalStatus is the final-quality-control pipeline stage.
type QCFinalStatus string

const (
	QCFinalYeni           QCFinalStatus = "Yeni"
	QCFinalOkey           QCFinalStatus = "Okey"
	QCFinalRausgefallen   QCFinalStatus = "Rausgefallen"
	QCFinalRausgefallenWP QCFinalStatus = "Rausgefallen WP"
	QCFinalNeuleger       QCFinalStatus = "Neuleger"
	QCFinalNeulegerWP     QCFinalStatus = "Neuleger WP"
)

// ValidQCOn reports whether s is a known qc_on value.
func ValidQCOn(s QCOnStatus) bool {
	switch s {
	case QCOnYeni, QCOnAranacak, QCOnRausgefallen, QCOnRausgefallenWP:
		return true
	}
	return false
}

// ValidQCFinal reports whether s is a known qc_final value.
func ValidQCFinal(s QCFinalStatus) bool {
	switch s {
	case QCFinalYeni, QCFinalOkey, QCFinalRausgefallen, QCFinalRausgefallenWP,
		QCFinalNeuleger, QCFinalNeulegerWP:
		return true
	}
	return false
}

// Customer is a lead record. The two QC fields belong to two different
// boards and are always patched separately, never together.
type Customer struct {
	ID        string        `json:"id,omitempty"`
	Name      string        `json:"name"`
	Surname   string        `json:"surname"`
	Phone     string        `json:"phone"`
	Email     string        `json:"email"`
	CompanyID string        `json:"company"`
	TeamID    string        `json:"team"`
	AgentID   string        `json:"agent"`
	QCOn      QCOnStatus    `json:"qc_on"`
	QCFinal   QCFinalStatus `json:"qc_final"`
	Note      string        `json:"note"`
	Created   string        `json:"created,omitempty"`
	Updated   string        `json:"updated,omitempty"`
}

// FullName joins name and surname for display.
func (c *Customer) FullName() string {
	if c.Surname == "" {
		return c.Name
	}
	return c.Name + " " + c.Surname
}
