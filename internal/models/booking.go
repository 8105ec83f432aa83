package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session é um dia de uso dentro de um agendamento: data + intervalo.
// Um agendamento de múltiplos dias carrega uma Session por dia, cada
// uma com seu próprio horário.
type Session struct {
	Date  string `json:"date"`  // YYYY-MM-DD
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

type Booking struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Room        string `gorm:"size:50;index" json:"room"`
	RoomName    string `gorm:"size:100" json:"room_name"`
	TipoReserva string `gorm:"size:50" json:"tipo_reserva"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	// --- Solicitante ---
	NomeCompleto     string `gorm:"size:255" json:"nome_completo"`
	SetorSolicitante string `gorm:"size:255" json:"setor_solicitante"`
	Responsavel      string `gorm:"size:255" json:"responsavel"`
	Telefone         string `gorm:"size:20" json:"telefone"`
	Email            string `gorm:"size:255" json:"email"`

	Sessions []Session `gorm:"serializer:json" json:"sessions"`

	// --- Evento ---
	NumeroParticipantes int      `json:"numero_participantes"`
	Participantes       []string `gorm:"serializer:json" json:"participantes"`
	Finalidade          string   `gorm:"size:255" json:"finalidade"`
	Descricao           string   `gorm:"type:text" json:"descricao"`
	Observacao          string   `gorm:"type:text" json:"observacao"`

	// Local físico atribuído pelo admin na aprovação (Escola Fazendária).
	Local string `gorm:"size:255" json:"local"`

	// --- Equipamentos ---
	Projetor    string `gorm:"size:10" json:"projetor"`
	SomProjetor string `gorm:"size:10" json:"som_projetor"`
	Internet    string `gorm:"size:10" json:"internet"`
	WifiTodos   string `gorm:"size:10" json:"wifi_todos"`
	ConexaoCabo string `gorm:"size:10" json:"conexao_cabo"`

	// --- Específicos Escola ---
	SoftwareEspecifico string `gorm:"size:10" json:"software_especifico"`
	QualSoftware       string `gorm:"type:text" json:"qual_software"`
	Papelaria          string `gorm:"type:text" json:"papelaria"`
	MaterialExterno    string `gorm:"type:text" json:"material_externo"`
	ApoioEquipe        string `gorm:"size:10" json:"apoio_equipe"`

	ObservacaoAdmin string `gorm:"type:text" json:"observacao_admin"`

	// Datas para as quais o e-mail de confirmação de presença já foi enviado.
	ConfirmationEmailsSent []string `gorm:"serializer:json" json:"confirmation_emails_sent"`

	// --- Auditoria de decisão ---
	ApprovedBy      *string    `gorm:"size:255" json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`
	RejectedBy      *string    `gorm:"size:255" json:"rejected_by"`
	RejectedAt      *time.Time `json:"rejected_at"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason"`

	AttendanceRecords    []AttendanceRecord    `gorm:"foreignKey:BookingID" json:"attendance_records,omitempty"`
	ExternalParticipants []ExternalParticipant `gorm:"foreignKey:BookingID" json:"external_participants,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Dates retorna as datas das sessions, na ordem original.
func (b *Booking) Dates() []string {
	dates := make([]string, 0, len(b.Sessions))
	for _, s := range b.Sessions {
		dates = append(dates, s.Date)
	}
	return dates
}

// SessionOn retorna a session de uma data, se existir.
func (b *Booking) SessionOn(date string) (Session, bool) {
	for _, s := range b.Sessions {
		if s.Date == date {
			return s, true
		}
	}
	return Session{}, false
}
