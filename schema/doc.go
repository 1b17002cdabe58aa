// Package schema declares forms from serialized documents and keeps them
// current as their source changes.
//
// A Document lists fields in order together with the rules applied to each:
//
//	name: signup
//	fields:
//	  - name: email
//	    label: Email
//	    presence: true
//	    email: true
//	  - name: password
//	    presence: true
//	    min_length: 8
//	  - name: password_confirmation
//	    confirms: password
//
// Build turns a Document into a *formstate.Form whose validator is compiled
// from the rules package.
//
// # Loader
//
// A Loader watches a source for new documents:
//
//	Source → Decode → Validate → Build → Current
//
// A rejected document leaves the previous form current and moves the Loader
// to StateDegraded (or StateEmpty if nothing was ever accepted). Rejections are
// reported through capitan signals and, optionally, a bounded history.
//
//	loader := schema.NewLoader(schema.NewFileWatcher("signup.yaml"))
//	if err := loader.Start(ctx); err != nil {
//	    log.Printf("schema rejected: %v", err)
//	}
//	state, err := loader.Mount(ctx, nil, nil)
package schema
