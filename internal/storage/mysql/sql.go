package mysql

const upsertRawSQL = `
INSERT INTO hostaway_reviews
  (id, type, status, rating, public_review, categories, submitted_at, guest_name, listing_name)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  type          = VALUES(type),
  status        = VALUES(status),
  rating        = VALUES(rating),
  public_review = VALUES(public_review),
  categories    = VALUES(categories),
  submitted_at  = VALUES(submitted_at),
  guest_name    = VALUES(guest_name),
  listing_name  = VALUES(listing_name),
  updated_at    = CURRENT_TIMESTAMP
`

const listRawSQL = `
SELECT id, type, status, rating, public_review, categories, submitted_at, guest_name, listing_name
FROM hostaway_reviews
ORDER BY id
`
