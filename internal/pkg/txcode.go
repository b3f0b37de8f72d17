package pkg

import (
	"fmt"
	"sync/atomic"
	"time"
)

var txCodeCounter uint64

// NextTransactionCode gera um código legível para transações financeiras,
// composto por timestamp e um contador monotônico. A unicidade definitiva é
// garantida pelo índice único no banco; em caso de colisão o chamador deve
// gerar um novo código e tentar novamente.
func NextTransactionCode() string {
	seq := atomic.AddUint64(&txCodeCounter, 1)
	return fmt.Sprintf("TRX-%s-%04d", time.Now().Format("20060102150405"), seq%10000)
}
