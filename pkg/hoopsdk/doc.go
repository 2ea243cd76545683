/*
Package hoopsdk provides the wire types and a client SDK for the hoops
leaderboard API.

# Overview

The types in this package are shared by the server, which writes them, and
by Client, which reads them. Errors returned by Client are *APIError or
*ValidationError values and can be inspected with errors.As:

	client := hoopsdk.NewClient("http://localhost:8000")

	login, err := client.Login(ctx, "admin@example.com", "secret")
	var apiErr *hoopsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		// wrong email or password
	}

# Credentials

Protected endpoints accept one of three credentials, depending on which
strategies the server enables. Pass the matching Credential to each call:

	entries, err := client.Leaderboard(ctx, hoopsdk.StaticToken(token), 10)
	entries, err := client.Leaderboard(ctx, hoopsdk.BearerToken(login.AccessToken), 10)

An external identity provider token travels in the request body as
"id_token"; IDToken adds it to write requests.
*/
package hoopsdk
