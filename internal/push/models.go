package push

// Payload — содержимое push-уведомления.
// Tag позволяет клиенту схлопывать повторные напоминания одного слота.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
}

type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type SubscribeRequest struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

type SubscribeResponse struct {
	OK    bool   `json:"ok"`
	ID    string `json:"id"`
	Count int    `json:"count"`
}

type UnsubscribeResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

// DispatchResult — итог рассылки по всем подпискам.
type DispatchResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
	Pruned int `json:"pruned"`
}
