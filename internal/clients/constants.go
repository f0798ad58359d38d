package clients

const MAX_RETRIES = 5
