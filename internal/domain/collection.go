package domain

// Collection names in the document store.
const (
	CollectionUser    = "user"
	CollectionProduct = "product"
	CollectionOrder   = "order"
)

// Collections lists the schema collections in their published order.
func Collections() []string {
	return []string{CollectionUser, CollectionProduct, CollectionOrder}
}
