package models

// Card is a collected nature card. A card belongs to exactly one user's cards list.
type Card struct {
	ID             string `json:"id" bson:"id"`
	CommonName     string `json:"commonName" bson:"commonName"`
	ScientificName string `json:"scientificName" bson:"scientificName"`
	Image          string `json:"image" bson:"image"`
	Rarity         string `json:"rarity" bson:"rarity"`
	Creator        string `json:"creator" bson:"creator"`
	Owner          string `json:"owner" bson:"owner"`
	FunFact        string `json:"funFact" bson:"funFact"`
	TimeCreated    string `json:"timeCreated" bson:"timeCreated"`
	Location       string `json:"location" bson:"location"`
	TradeStatus    bool   `json:"tradeStatus" bson:"tradeStatus"`
	InfoLink       string `json:"infoLink" bson:"infoLink"`
	Username       string `json:"username" bson:"username"`
}

// TradeRequest pairs a card offered by the sender with a card requested from the
// recipient. The same value lives in both users' trading lists.
type TradeRequest struct {
	OfferedCard   Card `json:"offeredCard" bson:"offeredCard"`
	RequestedCard Card `json:"requestedCard" bson:"requestedCard"`
}

// Matches reports whether t refers to the same pair of cards.
func (tr TradeRequest) Matches(t TradeRequest) bool {
	return tr.OfferedCard.ID == t.OfferedCard.ID && tr.RequestedCard.ID == t.RequestedCard.ID
}

// SameOffer reports whether t offers the same card.
func (tr TradeRequest) SameOffer(t TradeRequest) bool {
	return tr.OfferedCard.ID == t.OfferedCard.ID
}

// WithOwner returns a copy of the card owned by owner.
func (c Card) WithOwner(owner string) Card {
	c.Owner = owner
	return c
}
