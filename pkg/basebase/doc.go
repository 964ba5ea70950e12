// Package basebase is a client for the Basebase document store.
//
// Documents live in collections and are addressed by "/"-separated paths
// scoped to a project: "users/u1" in project "proj" is sent to the server
// as "<base>/proj/users/u1". References are cheap local values; every
// method that talks to the server takes a context.Context.
//
//	client, err := basebase.New("https://api.example.com/v1/projects", "proj",
//		basebase.WithAuth(auth.APIKey(key)))
//	ref, err := basebase.Doc(client, "users/u1", "")
//	snap, err := ref.Get(ctx)
//	if snap.Exists() {
//		fmt.Println(snap.Data())
//	}
//
// A missing document or collection is not an error: Get returns a snapshot
// that reports Exists() == false, or an empty QuerySnapshot.
package basebase
