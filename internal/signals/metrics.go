package signals

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignalsEmitted : количество отправленных сигналов по имени
	SignalsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accessrequests_signals_emitted_total",
		Help: "Total number of access request and secret link signals emitted",
	}, []string{"signal"})

	// ReceiverFailures : ошибки получателей сигналов
	ReceiverFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accessrequests_receiver_failures_total",
		Help: "Total number of signal receivers that returned an error",
	}, []string{"signal", "receiver"})

	// TokenValidations : результаты проверки токенов секретных ссылок
	TokenValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accessrequests_token_validations_total",
		Help: "Total number of secret link token validations by result",
	}, []string{"result"})
)
