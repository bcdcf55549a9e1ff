// wordgen/wordgen.go
package wordgen

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"

	"github.com/wfunc/wordclash/models"
)

// NATSProvider 通过 NATS request/reply 调用词卡生成服务。
// 请求体是 {"count": n}，应答体是卡牌JSON数组。
type NATSProvider struct {
	conn    *nats.Conn
	subject string
}

type generateRequest struct {
	Count int `json:"count"`
}

func Connect(url, subject string) (*NATSProvider, error) {
	conn, err := nats.Connect(url, nats.Name("wordclash"))
	if err != nil {
		return nil, err
	}
	return &NATSProvider{conn: conn, subject: subject}, nil
}

func (p *NATSProvider) GenerateCards(ctx context.Context, count int) ([]models.Card, error) {
	payload, err := json.Marshal(generateRequest{Count: count})
	if err != nil {
		return nil, err
	}

	msg, err := p.conn.RequestWithContext(ctx, p.subject, payload)
	if err != nil {
		return nil, err
	}

	var cards []models.Card
	if err := json.Unmarshal(msg.Data, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (p *NATSProvider) Close() {
	p.conn.Close()
}
