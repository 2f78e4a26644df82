package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme accepted by the API.
const BearerScheme = "Bearer"

// TokenTypeBearer is reported to clients in the login response.
const TokenTypeBearer = "bearer"
