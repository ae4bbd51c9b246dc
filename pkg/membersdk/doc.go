/*
Package membersdk is the client SDK and wire types for the members service.

The server uses the request/response types, Validate and APIError directly;
clients use Client for public endpoints and Session for everything that
needs a bearer token:

	client := membersdk.NewClient("http://localhost:8080")

	_, err := client.Register(ctx, membersdk.RegisterRequest{
		Username: "alice",
		Password: "correct-horse",
	})

	session, err := client.Authenticate(ctx, "alice", "correct-horse")
	profile, err := session.GetUser(ctx, 1)

# Tokens

Access tokens last 24 hours and cannot be refreshed or revoked. Role
changes made by an administrator only show up in a token issued after the
change, so log in again to pick them up.

# Errors

Non-2xx responses come back as *APIError, or *ValidationError when the
server rejected individual fields:

	var apiErr *membersdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == membersdk.ErrorCodePartialFailure {
		fmt.Println("failed at stage", apiErr.Stage, "already added", apiErr.Applied)
	}
*/
package membersdk
