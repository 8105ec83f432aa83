package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	BookingsCreated  prometheus.Counter
	BookingsApproved prometheus.Counter
	BookingsRejected prometheus.Counter
	MailsSent        prometheus.Counter
	MailsFailed      prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "agendamento_http_requests_total",
			Help: "Total de requisições HTTP por rota e status.",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agendamento_http_request_duration_seconds",
			Help:    "Duração das requisições HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agendamento_bookings_created_total",
			Help: "Agendamentos criados.",
		}),
		BookingsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agendamento_bookings_approved_total",
			Help: "Agendamentos aprovados (inclui aprovações parciais).",
		}),
		BookingsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agendamento_bookings_rejected_total",
			Help: "Agendamentos recusados.",
		}),
		MailsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agendamento_mails_sent_total",
			Help: "E-mails enviados com sucesso.",
		}),
		MailsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agendamento_mails_failed_total",
			Help: "E-mails com falha de envio.",
		}),
	}
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.RequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		m.RequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
