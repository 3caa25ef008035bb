// Package maven locates source jars of dependency versions in Maven
// Central (https://repo1.maven.org/maven2).
//
// # Usage
//
//	client := maven.NewClient(nil, "")
//	links, ok, err := client.SourceLinks(ctx, "org.apache.maven", "maven-core", "3.9.5", "3.9.6")
//	if err == nil && ok {
//	    fmt.Println(links[0]) // .../maven-core/3.9.5/maven-core-3.9.5-sources.jar
//	}
//
// # Coordinates
//
// groupId segments become path segments ("org.apache.maven" becomes
// "org/apache/maven"). Coordinates containing path separators, "..",
// whitespace or control characters are rejected before any request.
package maven
